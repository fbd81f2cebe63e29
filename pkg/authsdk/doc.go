// Package authsdk is the typed Go client for the depot auth service, plus
// the request/response and error types the service itself serves. Keeping
// both sides on one set of types means the e2e suite exercises exactly the
// wire contract the handlers write.
//
// Typical flow:
//
//	client := authsdk.NewClient("http://localhost:8080")
//	resp, session, err := client.Login(ctx, email, password)
//	if err != nil { ... }
//	if resp.RequiresMFA {
//		_, session, err = client.VerifyMFA(ctx, authsdk.MFAVerifyRequest{
//			Email: email, Token: code,
//		})
//	}
//	user, err := session.UserInfo(ctx)
package authsdk
