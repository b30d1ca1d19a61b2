// Package utils provides small value conversion helpers shared by the diff engine
// and the transformers.
package utils
