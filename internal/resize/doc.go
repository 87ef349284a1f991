// Package resize coordinates interactive column resizing for a header row.
//
// A header row with N columns has N-1 boundaries. Boundary i sits between
// column i and column i+1, and dragging it changes the width of column i only.
//
// # Main Types
//
//   - [Coordinator]: owns one [DragController] per mounted boundary and turns
//     the controller's drag events into full width vectors
//   - [DragController]: the gesture engine capability bound to one boundary
//     element. Implemented in package gesture for terminal mice.
//   - [Session]: the state of one in-flight drag
//
// # Event Flow
//
// For every attached boundary the coordinator creates an event channel and
// hands the send side to the [ControllerFactory]. The gesture engine publishes
// [EventDragStart], [EventDragMove] and [EventDragEnd] onto it.
//
// By default a pump goroutine per boundary drains the channel and handlers
// for all boundaries are serialized behind a single mutex. Interactive hosts
// set [Options.Manual] instead and call [Coordinator.Dispatch] after every
// input message; events are then handled on the host's own goroutine, so a
// width vector is applied before the next drag start measures the row.
//
// On drag start the coordinator measures every column through the
// [RowMeasurer]. On every move it writes
//
//	max(startWidth + sign*deltaX, MinColumnWidth)
//
// into the dragged column and hands a copy of the whole vector to the
// [WidthChangeFunc]. The sign is -1 in right-to-left layouts.
//
// # Lifecycle
//
// The render pass drives mounting through [Coordinator.Attach],
// [Coordinator.Detach] or, more conveniently, [Coordinator.Sync]. Detaching a
// boundary destroys its controller, stops its pump and drops any in-flight
// session. In manual mode nothing is emitted for that boundary afterwards,
// even when the detach happens inside the width-change callback.
package resize
