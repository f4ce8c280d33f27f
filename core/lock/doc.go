// Package lock provides a cross-instance lease so that only one process runs a
// catalog synchronization at a time.
//
// RedisLocker takes the lease with SET NX PX and a random token. Release runs a
// small Lua script that deletes the key only when it still carries that token,
// so a holder whose lease already expired cannot free somebody else's lock.
// NopLocker is used when no redis address is configured.
package lock
