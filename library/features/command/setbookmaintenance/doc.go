// Package setbookmaintenance implements the SetBookMaintenance command. It takes an
// available book out of lending or puts a book under maintenance back into it.
package setbookmaintenance
