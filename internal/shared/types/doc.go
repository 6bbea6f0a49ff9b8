// Package types defines the shared contracts between the directory
// engine and its callers: service/tool metadata, request shapes, and the
// structured Result/Failure pair every operation returns.
package types
