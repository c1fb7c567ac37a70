package util

// --------------------------------------------------------------------------
// Name Hashing
// --------------------------------------------------------------------------

// NameKey is the 32-bit key type under which tables are registered.
// It is a non-cryptographic, case-insensitive hash of the table name.
type NameKey uint32

// HashName generates the NameKey for a table name.
//
// The hash is case-insensitive and treats backslashes as forward slashes,
// so names that only differ in case or path-separator style address the
// same table. This matches the resource-name hashing of the host
// application, which registers its tables under the same folding rules.
//
// Thread-safety: This function is pure and can be called concurrently.
func HashName(s string) NameKey {
	var hash uint32

	for i := 0; i < len(s); i++ {
		ch := uint32(s[i])

		// fold backslash to slash before the case fold, so both separator
		// spellings end up as the same code unit
		if ch == '\\' {
			ch = '/'
		}
		if ch <= 'Z' {
			// fold to lowercase (the host hash folds the whole range below 'Z')
			ch += 32
		}

		hash = hash*137 + ch
	}

	return NameKey(hash)
}
