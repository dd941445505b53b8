package utils

// HoldKeyPrefix is the prefix used for reservation hold keys.
const HoldKeyPrefix = "hold:"
