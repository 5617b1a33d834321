package domain

// ActionResult is the explicit outcome of a swipe action. Callers apply
// local bookkeeping from it instead of mutating first and reverting.
type ActionResult struct {
	ImageID string
	Value   int

	Voted  bool
	VoteID int

	Favorited   bool
	FavoriteID  int
	FavoriteErr error // Set when the vote succeeded but the favorite did not

	RefillErr error // Set when the action applied but fetching more cards failed

	Err error // Fatal failure; nothing was applied
}

// OK reports whether the action took effect
func (r ActionResult) OK() bool {
	return r.Err == nil
}
