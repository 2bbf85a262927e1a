// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors provides structured error types for the discovery pass.
//
// Every error that crosses a package boundary carries an ErrorCode, so the
// CLI and the metrics recorder can classify failures without string matching:
//
//	if err := client.Version(ctx, dev); err != nil {
//		return errors.Wrap(errors.ErrCodeUnavailable, "rbln-daemon version call failed", err)
//	}
//
// Context values are attached with WrapWithContext and surface in logs:
//
//	errors.WrapWithContext(errors.ErrCodeUnknownDevice, "unclassified device", err,
//		map[string]any{"device_id": id, "pci_address": addr})
//
// StructuredError implements Unwrap, so errors.Is and errors.As from the
// standard library keep working through the wrapper. CodeOf and HasCode read
// the code back out of a chain.
package errors
