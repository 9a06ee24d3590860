// SPDX-License-Identifier: MPL-2.0

package jvm

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

// jniVersion is the interface version requested at creation time
// (JNI_VERSION_1_2). Raising it buys nothing and breaks older runtimes.
const jniVersion = 0x00010002

// JNIInvokeInterface function-table indices.
const (
	fnDestroyJavaVM       = 3
	fnAttachCurrentThread = 4
)

// JNINativeInterface function-table indices.
const (
	fnFindClass              = 6
	fnExceptionDescribe      = 16
	fnExceptionClear         = 17
	fnGetStaticMethodID      = 113
	fnCallStaticVoidMethodA  = 143
	fnNewStringUTF           = 167
	fnNewObjectArray         = 172
	fnSetObjectArrayElement  = 174
	fnExceptionCheck         = 228
)

// jvmOption mirrors JavaVMOption from jni.h.
type jvmOption struct {
	optionString *byte
	extraInfo    unsafe.Pointer
}

// jvmInitArgs mirrors JavaVMInitArgs from jni.h.
type jvmInitArgs struct {
	version            int32
	nOptions           int32
	options            *jvmOption
	ignoreUnrecognized uint8
	_                  [7]byte
}

// libVM drives a JVM loaded from a shared library. The vm and env words are
// the JavaVM* and JNIEnv* pointers handed out by the invocation interface.
type libVM struct {
	handle    uintptr
	vm        uintptr
	env       uintptr
	created   bool
	destroyed bool
}

// libEnv is a thread-attached JNIEnv*.
type libEnv struct {
	env uintptr
}

// Create implements VM. It loads libjvm, resolves JNI_CreateJavaVM, and
// creates the JVM with the given options.
func (v *libVM) Create(libPath string, args InitArgs) error {
	if v.created {
		return ErrAlreadyCreated
	}

	prepareLibrarySearch(libPath)
	handle, err := loadLibrary(libPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", libPath, err)
	}
	createFn, err := resolveSymbol(handle, "JNI_CreateJavaVM")
	if err != nil {
		return fmt.Errorf("resolve JNI_CreateJavaVM in %s: %w", libPath, err)
	}

	// The option strings and the options array must stay reachable until
	// JNI_CreateJavaVM returns; the JVM copies what it needs.
	cstrings := make([][]byte, len(args.Options))
	options := make([]jvmOption, len(args.Options))
	for i, option := range args.Options {
		cstrings[i] = append([]byte(option), 0)
		options[i].optionString = &cstrings[i][0]
	}

	initArgs := jvmInitArgs{
		version:  jniVersion,
		nOptions: int32(len(options)),
	}
	if len(options) > 0 {
		initArgs.options = &options[0]
	}
	if args.IgnoreUnrecognized {
		initArgs.ignoreUnrecognized = 1
	}

	var vm, env uintptr
	status, _, _ := purego.SyscallN(createFn,
		uintptr(unsafe.Pointer(&vm)),
		uintptr(unsafe.Pointer(&env)),
		uintptr(unsafe.Pointer(&initArgs)),
	)
	runtime.KeepAlive(cstrings)
	runtime.KeepAlive(options)
	if int32(status) != 0 {
		return fmt.Errorf("JNI_CreateJavaVM returned %d", int32(status))
	}

	v.handle = handle
	v.vm = vm
	v.env = env
	v.created = true
	return nil
}

// AttachCurrentThread implements VM.
func (v *libVM) AttachCurrentThread() (Env, error) {
	if !v.created || v.destroyed {
		return nil, ErrNotCreated
	}

	var env uintptr
	status, _, _ := purego.SyscallN(vmFn(v.vm, fnAttachCurrentThread),
		v.vm,
		uintptr(unsafe.Pointer(&env)),
		0,
	)
	if int32(status) != 0 {
		return nil, fmt.Errorf("AttachCurrentThread returned %d", int32(status))
	}
	return &libEnv{env: env}, nil
}

// Destroy implements VM. DestroyJavaVM blocks until every thread the JVM
// spawned has exited.
func (v *libVM) Destroy() error {
	if !v.created {
		return ErrNotCreated
	}
	if v.destroyed {
		return nil
	}
	v.destroyed = true

	status, _, _ := purego.SyscallN(vmFn(v.vm, fnDestroyJavaVM), v.vm)
	if int32(status) != 0 {
		return fmt.Errorf("DestroyJavaVM returned %d", int32(status))
	}
	return nil
}

// CallStaticVoidMain implements Env: it builds a java.lang.String[] from
// args and invokes className.main with the standard ([Ljava/lang/String;)V
// signature.
func (e *libEnv) CallStaticVoidMain(className string, args []string) error {
	internalName := strings.ReplaceAll(className, ".", "/")

	class, err := e.findClass(internalName)
	if err != nil {
		return err
	}

	mid, err := e.getStaticMethodID(class, "main", "([Ljava/lang/String;)V")
	if err != nil {
		return err
	}

	stringClass, err := e.findClass("java/lang/String")
	if err != nil {
		return err
	}

	empty, err := e.newStringUTF("")
	if err != nil {
		return err
	}
	array, _, _ := purego.SyscallN(envFn(e.env, fnNewObjectArray),
		e.env, uintptr(len(args)), stringClass, empty)
	if array == 0 {
		return e.pendingException("allocate argument array")
	}

	for i, arg := range args {
		jstr, err := e.newStringUTF(arg)
		if err != nil {
			return err
		}
		purego.SyscallN(envFn(e.env, fnSetObjectArrayElement),
			e.env, array, uintptr(i), jstr)
		if e.exceptionCheck() {
			return e.pendingException("populate argument array")
		}
	}

	// CallStaticVoidMethodA takes a jvalue array; a jvalue is one 8-byte slot.
	jargs := []uint64{uint64(array)}
	purego.SyscallN(envFn(e.env, fnCallStaticVoidMethodA),
		e.env, class, mid, uintptr(unsafe.Pointer(&jargs[0])))
	runtime.KeepAlive(jargs)
	if e.exceptionCheck() {
		return e.pendingException("invoke " + className + ".main")
	}
	return nil
}

func (e *libEnv) findClass(internalName string) (uintptr, error) {
	cname := append([]byte(internalName), 0)
	class, _, _ := purego.SyscallN(envFn(e.env, fnFindClass),
		e.env, uintptr(unsafe.Pointer(&cname[0])))
	runtime.KeepAlive(cname)
	if class == 0 {
		return 0, e.pendingException("find class " + internalName)
	}
	return class, nil
}

func (e *libEnv) getStaticMethodID(class uintptr, name, signature string) (uintptr, error) {
	cname := append([]byte(name), 0)
	csig := append([]byte(signature), 0)
	mid, _, _ := purego.SyscallN(envFn(e.env, fnGetStaticMethodID),
		e.env, class,
		uintptr(unsafe.Pointer(&cname[0])),
		uintptr(unsafe.Pointer(&csig[0])))
	runtime.KeepAlive(cname)
	runtime.KeepAlive(csig)
	if mid == 0 {
		return 0, e.pendingException("resolve method " + name + signature)
	}
	return mid, nil
}

func (e *libEnv) newStringUTF(s string) (uintptr, error) {
	cstr := append([]byte(s), 0)
	jstr, _, _ := purego.SyscallN(envFn(e.env, fnNewStringUTF),
		e.env, uintptr(unsafe.Pointer(&cstr[0])))
	runtime.KeepAlive(cstr)
	if jstr == 0 {
		return 0, e.pendingException("allocate string")
	}
	return jstr, nil
}

func (e *libEnv) exceptionCheck() bool {
	pending, _, _ := purego.SyscallN(envFn(e.env, fnExceptionCheck), e.env)
	return pending&0xff != 0
}

// pendingException describes the pending Java exception on stderr (via
// ExceptionDescribe), clears it, and returns a wrapped ErrJavaException.
func (e *libEnv) pendingException(operation string) error {
	if e.exceptionCheck() {
		purego.SyscallN(envFn(e.env, fnExceptionDescribe), e.env)
		purego.SyscallN(envFn(e.env, fnExceptionClear), e.env)
	}
	return fmt.Errorf("%s: %w", operation, ErrJavaException)
}

// vmFn reads the function pointer at index from the JavaVM invoke table.
func vmFn(vm uintptr, index int) uintptr {
	table := *(*uintptr)(unsafe.Pointer(vm))
	return *(*uintptr)(unsafe.Pointer(table + uintptr(index)*unsafe.Sizeof(uintptr(0))))
}

// envFn reads the function pointer at index from the JNIEnv native table.
func envFn(env uintptr, index int) uintptr {
	table := *(*uintptr)(unsafe.Pointer(env))
	return *(*uintptr)(unsafe.Pointer(table + uintptr(index)*unsafe.Sizeof(uintptr(0))))
}
