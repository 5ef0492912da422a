// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Snapshot runs use three codes of their own:
//   - ErrCodeDiscoveryFailed: the root host listing failed; the run aborts.
//   - ErrCodePartialEnumeration: a per-host or per-VM query failed; recovered
//     locally as an empty result.
//   - ErrCodeUnresolvableIdentity: an entity has no identity; it is skipped.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeDiscoveryFailed,
//	    "failed to list hosts",
//	    cause,
//	    map[string]any{
//	        "source": "vsphere://vcenter.example.com/DC1",
//	    },
//	)
//
// Callers classify errors with IsCode:
//
//	if errors.IsCode(err, errors.ErrCodeDiscoveryFailed) {
//	    // no snapshot was published
//	}
package errors
