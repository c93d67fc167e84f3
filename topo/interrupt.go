//  Copyright (c) 2024 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topo

import (
	"context"

	"github.com/blevesearch/planar/geom"
)

// checkInterrupt polls the operation context at the safe points between
// top-level stages of expensive operations (noding passes, labelling,
// ring assembly). A cancelled context aborts the in-progress operation
// with an InterruptedError; partial results are never observable, since
// all graph state is released with the operation.
func checkInterrupt(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return &geom.InterruptedError{}
	default:
		return nil
	}
}
