package l2table

import "errors"

// Core table error sentinels (spec §7 layer 1). These correspond to the
// negative error codes the spec's C/Rust lineage returns (-EINVAL, -ENOMEM,
// -EEXIST, -ENOENT); the teacher package's own idiom (ErrExisted, ErrIsFull,
// ErrIsClosed, ...) is a flat set of sentinel errors rather than an error
// code type, and this repo follows that.
var (
	ErrInvalidArgument = errors.New("l2table: invalid argument")
	ErrOutOfSpace      = errors.New("l2table: bucket and alternate bucket are full")
	ErrAlreadyExists   = errors.New("l2table: address already exists")
	ErrNotFound        = errors.New("l2table: address not found")
)
