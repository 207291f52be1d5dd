/*
Package keybinds maps terminal keys to launcher actions.

# Contexts

Every screen of the TUI has its own context (instances, accounts, settings,
activity, ...). List screens fall back to the shared viewer context for
navigation, and everything falls back to the global context, which holds
quit, page switching and the ctrl+b sidebar toggle.

Text prompts only match the text_input context so typed characters never
trigger global actions.

# Configuration File Format

Overrides live in keybinds.json in the data directory. Each section maps an
action to a comma separated list of keys and replaces the default keys of
that action:

	{
	  "version": "1.0",
	  "global": {
	    "toggle_sidebar": "ctrl+b,ctrl+s"
	  },
	  "instances": {
	    "instance_create": "n,+"
	  }
	}

Unknown actions and malformed keys are rejected when the file is loaded.
Use `launcher keybinds` to print the effective bindings.
*/
package keybinds
