package creds

// Unsupported is returned by id getters on platforms without the concept.
const Unsupported = -1

// MaxGroups bounds the supplementary group list accepted by SetGroups and
// InitGroups (NGROUPS_MAX on Linux).
const MaxGroups = 65536

// Backend is the process/OS boundary. Implementations call straight into the
// operating system; they never cache.
type Backend interface {
	Getpid() int
	Getuid() int
	Geteuid() int
	Getgid() int
	Getegid() int

	Setuid(uid int) error
	Setgid(gid int) error

	// Getgroups asks the OS for the group count, allocates exactly that
	// many entries and fetches them. It returns no data if either step
	// fails.
	Getgroups() ([]int, error)
	// Setgroups replaces the supplementary group list in one call.
	Setgroups(gids []int) error

	// Umask installs mask and returns the previous one.
	Umask(mask int) (int, error)

	// Abort ends the process immediately, skipping deferred calls and
	// exit handlers. It does not return.
	Abort()
}

// DefaultBackend returns the backend of the running platform.
func DefaultBackend() Backend {
	return newPlatformBackend()
}
