package cmd

// Summary is printed under the usage line of --help.
const Summary = `Inspect and manage the port forwards of an OpenSSH control master.

<host> must have a ControlPath in your ssh configuration so that a
multiplexing master can be reached (see ControlMaster in ssh_config(5)).

Without --forward or --cancel an interactive view opens:
  ↑/↓ or j/k   move the selection
  a            add a forward (starts the control master if needed)
  d            cancel the selected forward
  q or esc     quit

Forwards always bind localhost:<port> on both ends.`
