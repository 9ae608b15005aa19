// Package session implements the editing session: the state of the open image and the
// controller that applies user events to it.
//
// # Event Flow
//
// The presentation layer turns clicks, drags and menu choices into Event values and
// posts them to a Loop. The Loop hands one event at a time to Controller.Dispatch,
// which runs to completion before the next event is read. Only the Loop goroutine
// touches the Session.
//
// # States
//
// The controller is a small state machine over the active tool and the pending
// selection:
//
//	Idle --ChooseTool--> Armed(mode) --SelectionStart--> Selecting(mode, p)
//	Selecting(mode, p) --SelectionEnd--> Armed(mode)   (transform applied)
//	any --new image--> Idle
//
// Rotate, Flip and RemoveBackground act immediately and do not depend on the mode.
//
// # Background Removal
//
// Background removal is slow, so it runs on a worker goroutine. While it runs the
// controller is busy: events that would replace the image are rejected with a status
// message. The worker reports back by posting a completion event into the loop, so the
// image is still only ever replaced by Dispatch.
package session
