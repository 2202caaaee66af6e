// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package unrar_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RAR 1.5 archive with the entries
//
//	docs                 directory
//	docs\readme.txt      "read me first\n"
//	license.txt          "MIT License\n"
const scenario15 = "UmFyIRoHAM+QcwAADQAAAAAAAADIwnTggCUAAAAAAAAAAAACAAAAAHZAJFkdMAUAEAAAAGRvY3NcYtF0AIAvAA4AAAAOAAAAAlZC01l2QCRZHTAPACAAAABkb2NzXHJlYWRtZS50eHRyZWFkIG1lIGZpcnN0Csc0dACAKwAMAAAADAAAAAISiK2AdkAkWR0wCwAgAAAAbGljZW5zZS50eHRNSVQgTGljZW5zZQrEPXsAQAcA"

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

// RAR 1.5 archive with encrypted block headers
const encrypted15 = "UmFyIRoHAM6Zc4AADQAAAAAAAAAAAQIDBAUGBwgJCgsMDQ4PAAECAwQFBgcICQoLDA0ODwABAgMEBQYHCAkKCwwNDg8AAQIDBAUGBwgJCgsMDQ4P"

// RAR 5.0 archive with the entries dir/foo, file, link (symlink to dir/foo) and dir
const links50 = "UmFyIRoHAQAzkrXlCgEFBgAFAQGAgAADk1YoJQIDC50ABJ0ApIMClAgA9IAAAQdkaXIvZm9vCgMTQPjXZsjBSQhNaSAgNCBTZXAgMjAyNCAwODowMzo0NCBDRVNUCpQdu+oiAgMLnQAEnQCkgwI+z7uqgAABBGZpbGUKAxPEDddmxHsQDkRpICAzIFNlcCAyMDI0IDE1OjIzOjE2IENFU1QKe1xvKCwCAxcABAftwwIAAAAAgAABBGxpbmsKAxNM+NdmSCZHGAsFAQAHZGlyL2Zvb0A2hh0bAgMLAAEA7YMBgAABA2RpcgoDE0D412Z533kHHXdWUQMFBAA="

// solid RAR 4 archive with a.txt, b.txt and c.txt compressed with the RAR 2.9 LZ method
const solid29 = "UmFyIRoHADvQcwgADQAAAAAAAADd13QAgCUAOgAAAKgAAAAC5pqBunZAJFkdMwUAIAAAAGEudHh0DA1U0L4M75hX8AEIAAAwQSBIoMBnSeknwJIH/8Acb0YGWl4Jde0nS08idDSaTxRA15TBQNFtZfcfYN2ldBCAJQBDAAAAMQEAAAKVIE9pdkAkWR0zBQAgAAAAYi50eHTds4FtNwooYzeEmaqdaEalIILLiijaWh+AoIAVYE6TUiMJXnfFjyZc2fRp1a22OeIRkfHlznSvTr8o7d/Hm71+VPYArNd0EIAlAAYAAABqAAAAAsplBY12QCRZHTMFACAAAABjLnR4dP8w/eb2AMQ9ewBABwA="

// RAR 5.0 archive with a.txt and b.txt compressed
const compressed50 = "UmFyIRoHAQDFGjMyAwEAAF2oiAUZAgIiBqgBpANA+Ndm5pqBuoADAQVhLnR4dIfKFzMDL7MvxFZakhiQ4OcD/SmRF7rpRmhpRBsFF4u+Higl2X0rGQICcAaxAqQDQPjXZpUgT2mAAwEFYi50eHSBnUZFBUMi+EPuUVtAOOKqqtCOYuY8GgYQ/JNQJA3QAC/6KOBRHu3qt929Ufz1+L2bRFRNN9CVmqnKJGpQCCfMnoyNwo3E5ACARzkkk4mwYjxvLZHw48ufTr27+PLJ20Bz4H/pqrjKy1Fuvwxyz01aGbI6NQMFAAA="

// content of the entries of the compressed archives
var (
	compressedA = strings.Repeat("read me first\n", 12)
	compressedB = "MIT License\n\n" +
		strings.Repeat("Permission is hereby granted, free of charge. ", 4) +
		strings.Repeat("0123456789abcdefghijklmnopqrstuvwxyz", 3)
	compressedC = strings.Repeat("Permission is hereby granted, free of charge. ", 2) + "read me first\n"
)

// writeFixture decodes a base64 encoded archive into a new file and returns its path.
func writeFixture(t *testing.T, b64 string) string {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "test.rar")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// fixtureBytes decodes a base64 encoded archive.
func fixtureBytes(t *testing.T, b64 string) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)
	return data
}
