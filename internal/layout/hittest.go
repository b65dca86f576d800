package layout

// Placement records where one task's card was drawn in a frame.
type Placement struct {
	TaskID string
	Rect   Rect
}

// Layout is the ordered set of card placements published by one render
// pass: columns in board order, rows in store order. A new pass replaces it
// wholesale.
type Layout []Placement

// HitTest returns the first placement whose rectangle strictly contains p.
func (l Layout) HitTest(p Point) (Placement, bool) {
	for _, placement := range l {
		if placement.Rect.Contains(p) {
			return placement, true
		}
	}
	return Placement{}, false
}

// Find returns the placement published for a task.
func (l Layout) Find(taskID string) (Placement, bool) {
	for _, placement := range l {
		if placement.TaskID == taskID {
			return placement, true
		}
	}
	return Placement{}, false
}
