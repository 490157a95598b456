//go:build windows

package execpath

const pathSeparators = `/\`
