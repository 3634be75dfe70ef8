package controllers

// XlsxContentType exposes the unexported constant to the external test
// package, which cannot live in package controllers without creating an
// import cycle through routes.
const XlsxContentType = xlsxContentType
