// Package errors provides the structured error type used across the
// simulation.
//
// Errors carry a Code, a human readable Message, an optional Cause and free
// form metadata. Wrapping keeps the code of the innermost *Error so that a
// persistence failure deep in a repository still reads as Unavailable or
// DataLoss at the orchestrator.
//
// # Basic Usage
//
//	err := errors.NotFound("snapshot not found")
//	err := errors.InvalidArgumentf("unknown equipment slot: %s", slot)
//
// Adding metadata:
//
//	err := errors.DataLoss("snapshot is corrupt").
//	    WithMeta("key", key)
//
// Wrapping:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save player")
//	}
//
// # Validation
//
// Component configs validate themselves with a ValidationBuilder:
//
//	func (c *Config) Validate() error {
//	    vb := errors.NewValidationBuilder()
//	    if c.Repository == nil {
//	        vb.RequiredField("Repository")
//	    }
//	    errors.ValidateProbability("BossChance", c.BossChance, vb)
//	    return vb.Build()
//	}
//
// Gameplay precondition failures (not enough currency, cultivation below the
// cap) are not errors; they are reported through the outcome types of the
// engine packages.
package errors
