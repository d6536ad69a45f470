// Package errors provides the structured error type shared by the arena core.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form
// metadata. Codes split into two families:
//   - configuration codes (NotFound, InvalidArgument): an item or enemy id
//     that is not in the catalog, or a malformed template table. These abort
//     the requested action and surface to the top level.
//   - runtime codes (FailedPrecondition, Internal, Unavailable).
//
// Invalid player actions such as equipping a potion are not errors at all;
// the inventory and game orchestrator report them as booleans.
//
// # Basic Usage
//
//	err := errors.NotFoundf("item %q not in catalog", id)
//	err := errors.NotFound("enemy not found").WithMeta("enemy_key", key)
//
// Wrapping keeps the original code:
//
//	if err := repo.Append(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to record battle")
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateMin("max_rounds", cfg.MaxRounds, 1, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Exit Codes
//
// Code.ExitCode maps a code to the arena CLI exit status so configuration
// problems are distinguishable from runtime failures in scripts.
package errors
