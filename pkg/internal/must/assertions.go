// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package must

import "fmt"

// Assertions detect programmer errors. Unlike operating errors, which are
// expected and must be handled, assertion failures are unexpected and the
// only correct way to handle them is to crash.

// Succeed panics on error.
func Succeed[T any](obj T, err error) T {
	if err != nil {
		panic(fmt.Errorf("assertion broken: %w", err))
	}
	return obj
}

// BeFalse panics if b is true.
func BeFalse(b bool) {
	if b {
		panic("assertion broken: expected false")
	}
}
