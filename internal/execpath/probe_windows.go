//go:build windows

package execpath

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32        = windows.NewLazySystemDLL("kernel32.dll")
	procGetBinaryTypeW = modkernel32.NewProc("GetBinaryTypeW")
)

// DefaultProbe returns the probe for this platform.
func DefaultProbe() Probe {
	return NewExtensionProbe(os.Getenv("PATHEXT"), isBinaryImage)
}

// isBinaryImage asks the system whether path is an executable image.
func isBinaryImage(path string) bool {
	if procGetBinaryTypeW.Find() != nil {
		return false
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	var binaryType uint32
	r, _, _ := procGetBinaryTypeW.Call(uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&binaryType)))
	return r != 0
}
