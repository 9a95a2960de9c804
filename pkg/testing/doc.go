// Package testing provides deterministic fakes for testing the video player.
//
// # Quick Start
//
// Create a tester, mount a player, and drive it through the fakes:
//
//	func TestPlayer(t *testing.T) {
//	    tester := overlaytest.NewPlayerTesterWithT(t)
//	    c := tester.MustMount(t, cfg)
//
//	    tester.Decoder().EmitLoad(120)
//	    tester.Decoder().EmitReady()
//	    tester.Decoder().EmitProgress(60, 120)
//
//	    if got := c.View().Controls.Elapsed; got != "01:00" {
//	        t.Errorf("elapsed = %q", got)
//	    }
//	}
//
// # Timers
//
// Timers never fire on their own. Advance the fake scheduler instead:
//
//	tester.Pump(player.AutoHideDelay)
//
// # Side Effects
//
// Every call on the decoder, orientation lock, immersive mode, status bar
// and host surface is appended to tester.Log in order.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import overlaytest "github.com/go-drift/videooverlay/pkg/testing"
package testing
