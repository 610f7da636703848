// Package hostfs provides safe access helpers for account files that live
// below a configurable root.
//
// The root is "/" for the running system. When lumcred inspects another
// system image (a container rootfs or a host tree bind-mounted at /host),
// the root points there instead:
//
//	/etc/passwd  -> <root>/etc/passwd
//	/etc/group   -> <root>/etc/group
//
// Reads and writes of the same path are serialised inside the process.
package hostfs
