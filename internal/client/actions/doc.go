// Package actions implements what happens when the user submits something:
// login, registration, logout, voting and creating posts or subforums.
//
// Every handler reports its outcome through the feedback channel. A failed
// call leaves the session store untouched and does not navigate.
package actions
