// Package errs defines the error taxonomy shared by every store.
//
// Each failure carries a Kind (who is at fault) and a Code (what happened):
//
//   - KindUser: the caller supplied a key or index that is invalid for the
//     current state. Recoverable; state is never corrupted.
//   - KindLogic: an internal invariant was violated. Indicates a defect.
//   - KindSystem: the sparse backend or the resource controller failed.
//   - KindOther: residual failures with no domain meaning.
//
// Classification (KindOf, CodeOf) walks the wrap chain and is independent
// of the human-readable message.
package errs
