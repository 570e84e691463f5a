// Package common holds small helpers shared by the Jafa client packages.
package common

// WipeByteArray zeroes b in place. Used for passwords once they are sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
