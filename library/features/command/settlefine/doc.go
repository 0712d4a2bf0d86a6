// Package settlefine implements the SettleFine command, which records that a member paid a fine.
package settlefine
