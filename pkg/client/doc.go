// Package client talks to a tutor server and verifies its tokens.
//
// # Calling the API
//
// A Client wraps the JSON API. Login stores the returned token so later
// calls are authorized:
//
//	c := client.New("https://tutor.example.com")
//	if _, err := c.Login(ctx, "alice", "password123"); err != nil {
//	    return err
//	}
//	schedules, err := c.Schedules(ctx, "")
//
// Non-2xx responses come back as *StatusError, which carries the status code
// and the server's error message.
//
// # Verifying Requests
//
// Services that share the server's JWT secret can check bearer tokens
// locally instead of calling back:
//
//	server, _ := tokens.NewServer(secret)
//	verifier := client.NewBearerVerifier(server)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    claims, err := verifier.VerifyAuthorization(r)
//	    if err != nil {
//	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
//	        return
//	    }
//	    fmt.Fprintf(w, "Hello, %s!", claims.String("id"))
//	}
//
// Depend on the Verifier interface rather than *BearerVerifier so handlers
// can be tested with a stub.
package client
