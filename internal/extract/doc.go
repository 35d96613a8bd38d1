package extract

// Package extract implements the ordered strategy fallback against the
// external engine. Per-strategy failures are recorded, never re-raised, until
// every strategy has been exhausted; the final error carries a translated,
// caller-safe message.
