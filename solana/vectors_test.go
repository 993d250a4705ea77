package solana

import (
	"strings"

	"github.com/mr-tron/base58"
)

// Pinned against an independent BIP-39 + ed25519 implementation.
const (
	abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	abandonSeedHex  = "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4"
	abandonAddress  = "EHqmfkN89RJ7Y33CXM6uCzhVeuywHoJXZZLszBHHZy7o"
	abandonSeedB58  = "7Nd28R6edUHSmUoksLRST2rW8iqEHq2YQhTQrmJjNMXW"
	abandonKeypair  = "2toRUbaioVgUMx5nZ3bDQMiTzqqwoCn5Ghet7XtztT5X233cSApiZPs6VZujgQHxQVucrpSZHimy4bXrUE3qqVXo"

	legalMnemonic = "legal winner thank year wave sausage worth useful legal winner thank yellow"
	legalAddress  = "EPcM3RcpE9DnDxuJiFLHMf6jfxAW3QT5yCjwRDNeH8SV"

	// base58 of the byte sequence 1, 2, ... n
	bytes31 = "thX6LZfHDZZKUs92febYZhYRcXddmzfzF2NvTkPNE"
	bytes33 = "JNArUumxYJcSQpbuxuroRZtcSMVLcy5WbYGt14SRm1Fv"
	bytes65 = "6AC8icZpV3trdTvvR7m7zGrf6BdC6iYZcJ8ygHMtZ9hg4t1JHeeDYJHVhQbj18LwgJfMTBWizvpHFNxtEfYBzeEt"
)

func repeatWords(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func encodeB58(raw []byte) string {
	return base58.Encode(raw)
}
