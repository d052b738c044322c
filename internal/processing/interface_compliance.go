package processing

import (
	"pnw_targets/internal/pnw"
)

// Compile-time interface compliance checks
// These will cause compilation errors if the types don't implement the interfaces

var (
	_ NationSource = (*pnw.Client)(nil)
)
