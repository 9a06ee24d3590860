// SPDX-License-Identifier: MPL-2.0

// Package jvm is the boundary to the Java native invocation interface: it
// creates an embedded JVM from a shared library path, attaches the calling
// thread, invokes a static main method, and tears the JVM down.
//
// At most one JVM may exist per process lifetime; a destroyed handle can
// never be recreated. The orchestrator owns that lifecycle.
package jvm

import "errors"

// Sentinel errors for the JVM lifecycle.
var (
	// ErrAlreadyCreated is returned when Create is called on a VM that
	// already holds a live or destroyed handle.
	ErrAlreadyCreated = errors.New("a JVM was already created in this process")
	// ErrNotCreated is returned when attach or destroy is called before a
	// successful Create.
	ErrNotCreated = errors.New("no JVM has been created")
	// ErrJavaException is returned when the invoked Java code completed with
	// a pending exception.
	ErrJavaException = errors.New("java exception raised")
)

type (
	// InitArgs are the JVM initialization arguments.
	InitArgs struct {
		// Options are the initialization option strings, in final order.
		Options []string
		// IgnoreUnrecognized makes the JVM skip unknown -X options instead
		// of failing creation.
		IgnoreUnrecognized bool
	}

	// Env is a thread-attached JNI environment.
	Env interface {
		// CallStaticVoidMain invokes className.main(String[] args).
		CallStaticVoidMain(className string, args []string) error
	}

	// VM drives one embedded JVM through its lifecycle. Implementations are
	// not safe for concurrent use; the launch runs on a single thread.
	VM interface {
		// Create loads the shared library at libPath and creates the JVM.
		Create(libPath string, args InitArgs) error
		// AttachCurrentThread attaches the calling thread and returns its
		// environment. Requires a successful Create.
		AttachCurrentThread() (Env, error)
		// Destroy unloads the JVM, blocking until all Java threads have
		// exited. Safe to call once per created VM.
		Destroy() error
	}
)

// New returns the production VM backed by a dynamically loaded libjvm.
func New() VM {
	return &libVM{}
}
