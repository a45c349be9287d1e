package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

// Example demonstrates basic error creation with details.
func Example() {
	err := errors.New(errors.ErrorTypeNotFound, "type is not registered").
		WithDetail("type", "dragon")

	fmt.Println(err.Error())

	// Output:
	// not_found: type is not registered
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	err := errors.Wrap(io.EOF, errors.ErrorTypeConfig, "failed to read pool config").
		WithDetail("file", "spawnpool.yaml")

	if errors.IsType(err, errors.ErrorTypeConfig) {
		fmt.Println("This is a config error")
	}
	fmt.Println(err)

	// Output:
	// This is a config error
	// config: failed to read pool config: EOF
}

// ExampleTypeOf demonstrates branching on the error category.
func ExampleTypeOf() {
	for _, err := range []error{
		errors.New(errors.ErrorTypeEmptyPool, "no types registered"),
		errors.New(errors.ErrorTypeNoMatch, "no type satisfies predicate"),
		io.ErrUnexpectedEOF,
		nil,
	} {
		fmt.Printf("%q\n", errors.TypeOf(err))
	}

	// Output:
	// "empty_pool"
	// "no_match"
	// "internal"
	// ""
}
