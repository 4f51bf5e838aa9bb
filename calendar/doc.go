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

/*
Package calendar converts between linear timestamps and broken-down
Gregorian calendar fields.

A Time is a count of seconds since 1970-01-01T00:00:00Z held in 32 bits, so
it covers 1970 through early 2106. Decompose and Compose are exact inverses
over that whole range and never consult a table of days: years and months
are walked, which bounds the work at 136 + 12 iterations.
*/
package calendar
