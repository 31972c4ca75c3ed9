// Package integration exercises the account client against the
// in-process platform double, over real HTTP via httptest. Every test
// builds its own platform and client so mutations never leak between
// tests.
package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/charai-dev/charai/pkg/account"
	"github.com/charai-dev/charai/pkg/mockplatform"
	"github.com/charai-dev/charai/pkg/requester"
	"github.com/charai-dev/charai/pkg/session"
)

// newEnv starts a platform double and wires a client to it. Both hosts
// point at the same listener; the double serves the multimodal paths
// alongside the chat ones.
func newEnv(t *testing.T) (*mockplatform.Server, *account.Client, *session.Session) {
	t.Helper()

	platform := mockplatform.New()
	ts := httptest.NewServer(platform.Handler())
	t.Cleanup(ts.Close)

	sess := session.New("integration-token")
	client := account.New(sess, requester.New(),
		account.WithBaseURL(ts.URL),
		account.WithNeoURL(ts.URL),
	)
	return platform, client, sess
}
