package domain

// PoliceAuthHeader carries the shared secret of authorized scanner
// devices. It lives here so the scanner client and the server middleware
// agree on the name without the client importing the HTTP stack.
const PoliceAuthHeader = "x-police-auth"
