package protocol

// This package implements the framing of the management protocol spoken
// on the varnishd CLI port. It only deals with getting whole frames on
// and off the wire; attaching meaning to them is left to the caller.
//
// The protocol is a plain text request/response exchange over TCP.
//
// - The client sends one command per line.
// - The server answers every command with exactly one response frame.
// - The server speaks first: right after accepting a connection it
//   sends a banner, which is an ordinary response frame.
//
// === Requests
//
// A request is a single line terminated by '\n':
//
//   ```
//     ping\n
//     vcl.use boot\n
//   ```
//
// The first word selects the operation, the rest of the line carries
// its arguments. Quoting is the caller's problem; this package sends
// the line as given.
//
// === Responses
//
// A response frame is a status line followed by a body:
//
//   ```
//     <status> <length>\n
//     <body>
//   ```
//
// - `<status>` is a three digit code modelled on the SMTP classes
// - `<length>` is the size of `<body>` in bytes, exactly
// - the server writes a '\n' after the body; it is not part of the
//   body and is not counted by `<length>`
//
// The reader scans for the next line matching `\d{3} \d+` and treats
// everything before it as noise, which also swallows the trailing
// newline of the previous frame.
//
// === Status codes
//
// - `200` - the command succeeded, the body is its output
// - `107` - authentication required, the body opens with the challenge
// - `300` - panic.show answers this when no panic is recorded
// - `500` - the server acknowledges quit and will close the connection
//
// Anything else is a command failure of some flavour; the body then
// holds a human readable explanation.
//
// === Authentication
//
// When varnishd runs with a shared secret (-S) the banner arrives with
// status 107. The first 32 bytes of its body are a random challenge:
//
//   ```
//     107 59\n
//     ppjamjmbmdymnstaqyhumalgybmqtjwi\n
//     \n
//     Authentication required.\n
//   ```
//
// The client proves it knows the secret by sending
//
//   ```
//     auth <digest>\n
//   ```
//
// where `<digest>` is the hex encoded SHA-256 of
//
//   ```
//     <challenge>\n<secret>\n<challenge>\n
//   ```
//
// The secret is used exactly as stored, so a trailing newline in the
// secret file is part of it. A 200 response means the session is
// authenticated; another 107 means the digest was rejected.
