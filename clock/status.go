/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package clock

// Status tells how much the clock can be trusted
type Status int

// Trust states
const (
	StatusNotSet Status = iota
	StatusNeedsSync
	StatusSet
)

var statusToString = map[Status]string{
	StatusNotSet:    "NOT_SET",
	StatusNeedsSync: "NEEDS_SYNC",
	StatusSet:       "SET",
}

func (s Status) String() string {
	if str, ok := statusToString[s]; ok {
		return str
	}
	return "UNKNOWN"
}
