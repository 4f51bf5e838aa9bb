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
Package clock implements a software clock driven by a millisecond tick source.

The Engine keeps whole seconds since the epoch and only moves forward when it
is asked for the time: every Now call (and every accessor without an explicit
timestamp) reads the tick source, folds the whole seconds elapsed since the
previous reading into the clock and carries the sub-second remainder over to
the next call. Nothing runs in the background, so Now must be called at least
once per wraparound of the tick counter (~49.7 days for a 32 bit millisecond
counter).

An optional SyncProvider is polled every sync interval to correct the clock.
The trust status tracks the outcome:

  - StatusNotSet: the clock was never set, either explicitly or by a provider
  - StatusNeedsSync: the clock was set, but the last provider poll failed
  - StatusSet: the clock was set and the last poll (if any) succeeded

Engine is not safe for concurrent use. Hosts that call it from several
goroutines must serialize access themselves.
*/
package clock
