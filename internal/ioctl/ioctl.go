// Package ioctl wraps the ioctl system call for reading and writing driver
// attributes through a device file descriptor.
package ioctl

import (
	"fmt"
	"reflect"
	"syscall"
)

// Directions from <asm-generic/ioctl.h>
const (
	dirWrite = 1
	dirRead  = 2
)

// Get reads a driver attribute into the value ptr points at. The attribute
// size is taken from the pointed-to type.
func Get(fd, cmd uintptr, ptr interface{}) error {
	return call(fd, encode(dirRead, cmd, ptr), ptr)
}

// Set writes the value ptr points at to a driver attribute.
func Set(fd, cmd uintptr, ptr interface{}) error {
	return call(fd, encode(dirWrite, cmd, ptr), ptr)
}

func encode(dir, cmd uintptr, ptr interface{}) uintptr {
	size := reflect.TypeOf(ptr).Elem().Size()
	return dir<<30 | size<<16 | cmd
}

func call(fd, command uintptr, ptr interface{}) error {
	var p uintptr
	if ptr != nil {
		p = reflect.ValueOf(ptr).Pointer()
	}

	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, command, p)
	if errno != 0 {
		return fmt.Errorf("ioctl %#08x failed: %v", command, errno)
	}
	return nil
}
