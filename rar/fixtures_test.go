// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package rar

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RAR 1.5 archive with the entries
//
//	docs                 directory
//	docs\readme.txt      "hello readme\n"
//	license.txt          "MIT\n"
//	secret.txt           encrypted
//	u\name.txt           Unicode name u\näme.txt, "wide"
const sample15 = "UmFyIRoHAM+QcwAADQAAAAAAAAAfBXTggCQAAAAAAAAAAAACAAAAAHZAJFkdMAQAEAAAAGRvY3OAM3QAgC8ADQAAAA0AAAACRtdEi3ZAJFkdMA8AIAAAAGRvY3NccmVhZG1lLnR4dGhlbGxvIHJlYWRtZQrbCXQAgCsABAAAAAQAAAAC/ZhzCXZAJFkdMAsAIAAAAGxpY2Vuc2UudHh0TUlUCsfDdASAKgAEAAAABAAAAAJ3ZBVsdkAkWR0wCgAgAAAAc2VjcmV0LnR4dHh4eHgpdnQAgkMABAAAAAQAAAAC4ozjrHZAJFkdMCMAIAAAAHVcbmFtZS50eHQAAKp1AFwAbgDkAKptAGUALgB0AKp4AHQAd2lkZcQ9ewBABwA="

// RAR 1.5 archive with the entries ..\evil.txt and ok.txt
const traversal15 = "UmFyIRoHAM+QcwAADQAAAAAAAAC8uHQAgCsABQAAAAUAAAACes0/t3ZAJFkdMAsAIAAAAC4uXGV2aWwudHh0ZXZpbArmj3QAgCYAAwAAAAMAAAACfQ4W2nZAJFkdMAYAIAAAAG9rLnR4dG9rCsQ9ewBABwA="

// RAR 1.5 archive with a single entry named "b\x84r.txt" in code page 437
const legacy15 = "UmFyIRoHAM+QcwAADQAAAAAAAABPZnQAgCcABgAAAAYAAAACjUHG73ZAJFkdMAcAIAAAAGKEci50eHRjcDQzNwrEPXsAQAcA"

// RAR 1.5 archive with part.bin continuing in the next volume, followed by after.txt
const split15 = "UmFyIRoHAM+QcwAADQAAAAAAAAA6h3QCgCgAAwAAAAMAAAACwkEkNXZAJFkdMAgAIAAAAHBhcnQuYmluYWJjsbx0AIApAAYAAAAGAAAAAtszhTN2QCRZHTAJACAAAABhZnRlci50eHRhZnRlcgrEPXsAQAcA"

// solid RAR 1.5 archive with a.txt, b.txt and c.txt
const solid15 = "UmFyIRoHADvQcwgADQAAAAAAAAAmz3QAgCUABgAAAAYAAAACKrNKx3ZAJFkdMAUAIAAAAGEudHh0Zmlyc3QKDOV0EIAlAAcAAAAHAAAAAn7ADwZ2QCRZHTAFACAAAABiLnR4dHNlY29uZApEX3QQgCUABgAAAAYAAAAC8pEseHZAJFkdMAUAIAAAAGMudHh0dGhpcmQKxD17AEAHAA=="

// RAR 1.5 archive where the data of bad.txt does not match its checksum
const badCRC15 = "UmFyIRoHAM+QcwAADQAAAAAAAACdfXQAgCcABAAAAAQAAAACkk6EbHZAJFkdMAcAIAAAAGJhZC50eHRldmlsxD17AEAHAA=="

// RAR 1.5 archive with encrypted block headers
const encrypted15 = "UmFyIRoHAM6Zc4AADQAAAAAAAAAAAQIDBAUGBwgJCgsMDQ4PAAECAwQFBgcICQoLDA0ODwABAgMEBQYHCAkKCwwNDg8AAQIDBAUGBwgJCgsMDQ4P"

// RAR 5.0 archive with the entries
//
//	docs                 directory
//	docs/readme.txt      "hello readme\n"
//	secret.txt           encrypted
//	ünï.txt              "wide\n"
const sample50 = "UmFyIRoHAQDFGjMyAwEAAO75vh4SAgIAAwDtA0D412YAAQRkb2NzIAcRkiECAg0GDaQDQPjXZkbXRIsAAQ9kb2NzL3JlYWRtZS50eHRoZWxsbyByZWFkbWUKW9GBEEICAyUQBhCkA0D412YPGCi7AAEKc2VjcmV0LnR4dCQBAAAPAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAB4eHh4eHh4eHh4eHh4eHh4MlqcsBsCAgUGBaQDQPjXZktmf3wAAQnDvG7Dry50eHR3aWRlChmyOjUDBQAA"

// RAR 5.0 archive with the entries dir/foo, file, link (symlink to dir/foo) and dir
const links50 = "UmFyIRoHAQAzkrXlCgEFBgAFAQGAgAADk1YoJQIDC50ABJ0ApIMClAgA9IAAAQdkaXIvZm9vCgMTQPjXZsjBSQhNaSAgNCBTZXAgMjAyNCAwODowMzo0NCBDRVNUCpQdu+oiAgMLnQAEnQCkgwI+z7uqgAABBGZpbGUKAxPEDddmxHsQDkRpICAzIFNlcCAyMDI0IDE1OjIzOjE2IENFU1QKe1xvKCwCAxcABAftwwIAAAAAgAABBGxpbmsKAxNM+NdmSCZHGAsFAQAHZGlyL2Zvb0A2hh0bAgMLAAEA7YMBgAABA2RpcgoDE0D412Z533kHHXdWUQMFBAA="

// RAR 5.0 archive with an archive encryption header
const encrypted50 = "UmFyIRoHAQDFGjMyAwEAAA87LJ4VBAAAAA8AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// RAR 4 archive with a.txt and b.txt compressed with the RAR 2.9 LZ method
const compressed29 = "UmFyIRoHAM+QcwAADQAAAAAAAADhBnQAgCUAHQAAAKgAAAAC5pqBunZAJFkdMwUAIAAAAGEudHh0DMDL7MvxFZakhiQ4OcD/gmzi91rIvAsiaWa33vB72nQAgCUAawAAADEBAAAClSBPaXZAJFkdMwUAIAAAAGIudHh0EUFQyL4Q+5RW0A44qqq0I5i5jwaBhD8k1UkDdAAL6KXOBw929VPu3qU9ePheTaIqJpvYSk1U5RI1KAQT4k9GRsFGwnIAUnE2DEeNpan92/hx5c+nXt3ZO2gOfA/v7/TGVVaLZbdfhjlotmDEPXsAQAcA"

// solid RAR 4 archive with a.txt, b.txt and c.txt compressed with the RAR 2.9 LZ method.
// b.txt and c.txt reuse the code tables of a.txt and copy data of the previous entries.
const solid29 = "UmFyIRoHADvQcwgADQAAAAAAAADd13QAgCUAOgAAAKgAAAAC5pqBunZAJFkdMwUAIAAAAGEudHh0DA1U0L4M75hX8AEIAAAwQSBIoMBnSeknwJIH/8Acb0YGWl4Jde0nS08idDSaTxRA15TBQNFtZfcfYN2ldBCAJQBDAAAAMQEAAAKVIE9pdkAkWR0zBQAgAAAAYi50eHTds4FtNwooYzeEmaqdaEalIILLiijaWh+AoIAVYE6TUiMJXnfFjyZc2fRp1a22OeIRkfHlznSvTr8o7d/Hm71+VPYArNd0EIAlAAYAAABqAAAAAsplBY12QCRZHTMFACAAAABjLnR4dP8w/eb2AMQ9ewBABwA="

// RAR 5.0 archive with a.txt and b.txt compressed, the data of a.txt spans two blocks
const compressed50 = "UmFyIRoHAQDFGjMyAwEAAF2oiAUZAgIiBqgBpANA+Ndm5pqBuoADAQVhLnR4dIfKFzMDL7MvxFZakhiQ4OcD/SmRF7rpRmhpRBsFF4u+Higl2X0rGQICcAaxAqQDQPjXZpUgT2mAAwEFYi50eHSBnUZFBUMi+EPuUVtAOOKqqtCOYuY8GgYQ/JNQJA3QAC/6KOBRHu3qt929Ufz1+L2bRFRNN9CVmqnKJGpQCCfMnoyNwo3E5ACARzkkk4mwYjxvLZHw48ufTr27+PLJ20Bz4H/pqrjKy1Fuvwxyz01aGbI6NQMFAAA="

// solid RAR 5.0 archive with a.txt, b.txt and c.txt. b.txt and c.txt reuse the code
// tables of a.txt and copy data of the previous entries.
const solid50 = "UmFyIRoHAQDc3l41AwEABOOHMJ8ZAgI7BqgBpANA+Ndm5pqBuoADAQVhLnR4dMakOCBFU0L4Q+8or9AIiqqrQiCg8GgZsnpJ9WSL/+qut/g9Hu6G0fgZxwyps4YGBlRoGvKYKBotrMMCZfEk9hkCAkQGsQKkA0D412aVIE9pwAMBBWIudHh0R1xB4buRbzcKKGM4hJmqnWhGpSCCy4oo2lofiKCAFWBOk1IjGWCHyZc2fRp1a9m1tjniEZHz6dZ0r27/aPHn17u+f2SR4SA3GAICBwZqpANA+NdmymUFjcADAQVjLnR4dEYYBL6h/cwZsjo1AwUAAA=="

// content of the entries of the compressed archives
var (
	compressedA = strings.Repeat("read me first\n", 12)
	compressedB = "MIT License\n\n" +
		strings.Repeat("Permission is hereby granted, free of charge. ", 4) +
		strings.Repeat("0123456789abcdefghijklmnopqrstuvwxyz", 3)
	compressedC = strings.Repeat("Permission is hereby granted, free of charge. ", 2) + "read me first\n"
)

// fixture decodes a base64 encoded archive.
func fixture(t *testing.T, b64 string) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)
	return data
}

// openFixture opens a base64 encoded archive from memory.
func openFixture(t *testing.T, b64 string, opts ...Option) *Archive {
	t.Helper()
	data := fixture(t, b64)
	a, err := NewArchive(bytes.NewReader(data), int64(len(data)), opts...)
	require.NoError(t, err)
	return a
}

// extract returns the decompressed data of the entry at index i.
func extract(t *testing.T, a *Archive, i int) (string, error) {
	t.Helper()
	entries := a.Entries()
	require.Less(t, i, len(entries))
	var buf bytes.Buffer
	err := a.ExtractInto(entries[i], &buf)
	return buf.String(), err
}
