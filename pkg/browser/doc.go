// Package browser provides the headless browser layer for pageflow workflows
// through Playwright.
//
// The package wraps one Chromium session end-to-end: launching the driver,
// creating an isolated context and page, exposing each page operation the
// workflow actions need, and observing network traffic for the request log.
//
// # Architecture
//
// The package is built around three core concepts:
//
//  1. Launcher: owns the Playwright driver process and launches sessions
//  2. Session: one browser + context + page with typed operation wrappers
//  3. Recorder: a toggleable, bounded network request log fed by page events
//
// # Session Lifecycle
//
// A workflow run uses exactly one session:
//
//  1. Launcher.Start boots the Playwright driver
//  2. Launcher.Launch creates the browser, context, and page
//  3. Step handlers call Session operations (Navigate, Click, Fill, ...)
//  4. Session.Close and Launcher.Stop release everything, on every exit path
//
// # Capture Limits
//
// All payloads handed back to callers are size-bounded: snapshot HTML, JS
// evaluation results, recorded request URLs, and error messages each have a
// fixed limit (see limits.go). Truncation is rune-safe so bounded output is
// always valid UTF-8.
//
// # Example Usage
//
//	launcher := browser.NewLauncher()
//	if err := launcher.Start(); err != nil {
//	    return err
//	}
//	defer launcher.Stop()
//
//	session, err := launcher.Launch(browser.LaunchOptions{
//	    Headless: true,
//	    Args:     browser.DefaultLaunchArgs(),
//	})
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	err = session.Navigate("https://example.com", browser.NavigateOptions{
//	    WaitUntil: "domcontentloaded",
//	    Timeout:   browser.DefaultTimeout,
//	})
package browser
