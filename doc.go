// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package unrar extracts Rar archives into a destination directory.
//
// The [Extractor] walks the entries of an [Archive] in archive order, recreates the
// directory tree described by the backslash separated entry names and streams the
// decompressed data of every file entry into a new file. Encrypted archives and encrypted
// entries are skipped with a warning. Entry names are checked, so that nothing is written
// outside of the destination directory.
//
// Archives are opened with the rar sub-package by default. Any other implementation of
// [Archive] can be passed to [Extractor.Extract] or configured with [WithOpener].
//
// Configuration is done using the [Config], which is a configuration struct that can be used to
// set the limits, the logger and the telemetry hook. Telemetry data is captured during the
// extraction process and handed to the [TelemetryHook] once the extraction has finished.
package unrar
