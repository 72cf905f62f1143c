package models

// Record is a raw row as returned by the core API list endpoints.
// Fields are loosely typed (string/number/bool/null); every read goes
// through the utils coercion helpers so the typed entities below are the
// single validation boundary for the whole pipeline.
type Record map[string]any
