// SPDX-License-Identifier: MPL-2.0

package jvm

type (
	// FakeVM is a test double for the native invocation interface. Each
	// lifecycle step can be scripted to fail; the call log records the
	// sequence for assertions.
	FakeVM struct {
		// CreateErr fails Create when non-nil. It may be keyed per library
		// path via CreateErrFor, which takes precedence.
		CreateErr error
		// CreateErrFor fails Create for specific library paths.
		CreateErrFor map[string]error
		// AttachErr fails AttachCurrentThread when non-nil.
		AttachErr error
		// InvokeErr fails CallStaticVoidMain when non-nil.
		InvokeErr error

		// Calls is the ordered log of lifecycle operations.
		Calls []string
		// CreatedWith is the library path of the successful Create.
		CreatedWith string
		// CreatedArgs are the init args of the successful Create.
		CreatedArgs InitArgs
		// InvokedClass and InvokedArgs record the main invocation.
		InvokedClass string
		InvokedArgs  []string

		created   bool
		destroyed bool
	}

	fakeEnv struct {
		vm *FakeVM
	}
)

// Create implements VM.
func (f *FakeVM) Create(libPath string, args InitArgs) error {
	f.Calls = append(f.Calls, "create "+libPath)
	if f.created {
		return ErrAlreadyCreated
	}
	if err, ok := f.CreateErrFor[libPath]; ok && err != nil {
		return err
	}
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.created = true
	f.CreatedWith = libPath
	f.CreatedArgs = args
	return nil
}

// AttachCurrentThread implements VM.
func (f *FakeVM) AttachCurrentThread() (Env, error) {
	f.Calls = append(f.Calls, "attach")
	if !f.created || f.destroyed {
		return nil, ErrNotCreated
	}
	if f.AttachErr != nil {
		return nil, f.AttachErr
	}
	return &fakeEnv{vm: f}, nil
}

// Destroy implements VM.
func (f *FakeVM) Destroy() error {
	f.Calls = append(f.Calls, "destroy")
	if !f.created {
		return ErrNotCreated
	}
	f.destroyed = true
	return nil
}

// Destroyed reports whether Destroy was called on a created VM.
func (f *FakeVM) Destroyed() bool { return f.destroyed }

// CallStaticVoidMain implements Env.
func (e *fakeEnv) CallStaticVoidMain(className string, args []string) error {
	e.vm.Calls = append(e.vm.Calls, "invoke "+className)
	if e.vm.InvokeErr != nil {
		return e.vm.InvokeErr
	}
	e.vm.InvokedClass = className
	e.vm.InvokedArgs = args
	return nil
}
