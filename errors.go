// Copyright (c) 2026 Witness Labs
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2030-08-01
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package wevm

// ConstError is an error type for declaring error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}
