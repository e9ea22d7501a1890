// Package cli is the gophforum terminal client.
//
// NewRootCmd builds the cobra command tree. Without a subcommand it starts a
// REPL that restores the stored session, watches server reachability in the
// background and runs forum commands. Every command that talks to the server
// goes through a forms.Form, so local checks, transport failures and server
// field errors are all shown as one resolved message per render site.
package cli
