// Package script drives an editing session without a window.
//
// The driver reads one JSON object per line, turns it into a session event and waits
// until the session has finished handling it (including background removal) before
// reading the next line. Every call the controller makes on its view is written back
// as one JSON object per line.
//
// # Input
//
//	{"event": "open", "path": "/tmp/shot.png"}
//	{"event": "choose_tool", "tool": "mosaic"}
//	{"event": "selection_start", "x": 10, "y": 10}
//	{"event": "selection_end", "x": 60, "y": 60}
//	{"event": "mosaic_strength", "value": 5}
//	{"event": "paint_color", "color": "#00FF0080"}
//	{"event": "rotate", "degrees": 90}
//	{"event": "flip", "direction": "horizontal"}
//	{"event": "save", "path": "/tmp/out.png"}
//	{"event": "quit"}
//
// The remaining events are "paste", "drop" (path), "remove_background" and "copy".
// Blank lines are skipped. End of input behaves like "quit".
//
// # Output
//
//	{"kind": "image", "width": 200, "height": 200, "format": "RGBA"}
//	{"kind": "mode", "mode": "mosaic"}
//	{"kind": "status", "text": "..."}
//
// Other kinds are "error", "busy", "idle" and "closed". Lines that cannot be parsed
// produce {"kind": "error", "line": N, "text": "..."} and are otherwise ignored.
package script
