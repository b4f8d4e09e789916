package usecase

// ApplyFocusLoss is exported for testing the orchestration without storage
var ApplyFocusLoss = applyFocusLoss

// DiscardSurface is exported for testing
type DiscardSurface = discardSurface
