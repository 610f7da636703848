// Package accounts is the directory-service boundary: it resolves user and
// group records by name or numeric id from the system accounts database.
//
// Two directories are provided:
//   - System asks the platform (getpwuid_r/getgrnam_r through os/user).
//   - Files reads etc/passwd and etc/group below a root directory. Each record
//     is read through a fixed RecordBufferSize scratch buffer; a record that
//     does not fit is a lookup failure, never a truncated answer.
//
// Nothing is cached: every call consults the database again.
package accounts
