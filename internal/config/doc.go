// Package config loads keybind assignments from JSON files.
//
// A binding set file looks like:
//
//	{
//	  "name": "front-panel",
//	  "bindings": [
//	    {"event": 0, "buttons": [4], "state": "release"},
//	    {"event": 1, "buttons": [2, 4], "state": "hold", "description": "chord"}
//	  ]
//	}
//
// Buttons are listed in press order with the primary last, matching
// keybind.Assign. State expressions accept the flag names understood
// by button.ParseState.
package config
