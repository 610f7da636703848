// Package creds inspects and changes the credentials of the running process:
// pid, real/effective uid and gid, the supplementary group list and the
// umask.
//
// A Resolver translates between names and numeric ids through an
// accounts.Directory and reconciles the supplementary group list with the
// effective gid. An Accessor validates arguments, resolves names through its
// Resolver and then performs the syscall through a Backend.
//
// Every credential of a process is process-wide state. Nothing in this
// package locks around it: callers that change ids or the umask while other
// goroutines create files or make permission-sensitive calls must serialise
// those themselves.
//
// On platforms without POSIX credentials (Windows) the id getters return
// Unsupported and the setters fail with ErrUnsupported.
package creds
