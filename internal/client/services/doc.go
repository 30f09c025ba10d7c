// Package services contains the pre-dashboard application services of the
// console client: role login and logout, the forgot-password request log
// and the client-side registration application.
package services
