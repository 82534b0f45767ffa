package types

// JSONB mirrors the backend's schemaless JSON columns (resource features,
// notification metadata).
type JSONB map[string]any
