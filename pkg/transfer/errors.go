package transfer

import "errors"

// ErrNonPositiveAmount is returned when a transfer or entry amount is
// missing, zero or negative.
var ErrNonPositiveAmount = errors.New("amount must be greater than zero")

// ErrInsufficientBalance is returned when the amount exceeds the known
// source balance. Advisory only; the server is the final authority.
var ErrInsufficientBalance = errors.New("amount exceeds available balance")

// ErrSameBranch is returned when a branch-to-branch transfer names the
// same branch as source and destination.
var ErrSameBranch = errors.New("source and destination branch must differ")

// ErrNoBranch is returned when a transfer is missing its branch.
var ErrNoBranch = errors.New("a branch must be selected")

// ErrUgarExceedsAmount is returned when the ugar loss is larger than
// the transferred amount.
var ErrUgarExceedsAmount = errors.New("ugar amount cannot exceed the transfer amount")

// ErrNegativeUgar is returned when the ugar loss is negative.
var ErrNegativeUgar = errors.New("ugar amount cannot be negative")

// ErrMissingReason is returned when an ugar loss is recorded without a
// reason.
var ErrMissingReason = errors.New("a reason is required when recording an ugar loss")

// ErrNotAnImage is returned when an evidence attachment is not an
// image.
var ErrNotAnImage = errors.New("evidence attachment must be an image")

// ErrImageTooLarge is returned when an evidence attachment exceeds the
// size limit.
var ErrImageTooLarge = errors.New("evidence image must be 5 MiB or smaller")
