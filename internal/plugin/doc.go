// SPDX-License-Identifier: MPL-2.0

// Package plugin executes catalog entries.
//
// An Executor binds a catalog.Entry to a Runnable. Three variants exist:
//
//   - ApplicationLaunch spawns the desktop launcher for an application. It is
//     fire-and-forget: failures are logged, never returned.
//   - BuiltinInvoke calls a function compiled into the binary and registered
//     in a Registry under its module name.
//   - ExternalInvoke loads a shell plugin file at invocation time and runs its
//     `run` function in the mvdan.cc/sh interpreter.
//
// Plugin sources follow a naming convention: action_<id>.<ext> and
// pipe_<id>.<ext>. The first line of an external source is a quoted shell
// string holding the plugin description. It is parsed, never evaluated.
package plugin
