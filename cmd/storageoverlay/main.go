// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Command storageoverlay is a small demo/debugging harness for the
// storage journal: it drives a scripted get/set/snapshot/revert/commit
// sequence against an in-memory backing store and reports the resulting
// storage roots.
package main

import (
	"github.com/alecthomas/kong"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/quillchain/storageoverlay/common"
	"github.com/quillchain/storageoverlay/execution/state"
	"github.com/quillchain/storageoverlay/internal/memkv"
)

var CLI struct {
	Demo DemoCmd `cmd:"" help:"Run a scripted get/set/snapshot/revert/commit sequence and print the resulting roots."`
}

// DemoCmd exercises scenario S1 from the journal's testable-properties
// fixture set, logging the initial read, the revert and the committed
// root.
type DemoCmd struct {
	Address string `arg:"" optional:"" default:"0x0000000000000000000000000000000000000001" help:"Account address to operate on."`
	Slot    uint64 `arg:"" optional:"" default:"7" help:"Storage slot index."`
}

func (c *DemoCmd) Run(ctx *Context) error {
	address := common.HexToAddress(c.Address)
	var slot uint256.Int
	slot.SetUint64(c.Slot)

	db := memkv.NewDatabase()
	sp := memkv.NewStateProvider()
	sp.CreateAccount(address)

	j := state.NewJournal(db, sp)

	ctx.Log.Info("reading uninitialized slot", zap.String("address", address.String()))
	before := j.Get(address, slot)
	ctx.Log.Info("read", zap.Binary("value", before))

	j.Set(address, slot, []byte{0x2A})
	snap := j.Snapshot()
	j.Set(address, slot, []byte{0x2B})

	if err := j.Revert(snap); err != nil {
		ctx.Log.Error("revert failed", zap.Error(err))
		return err
	}
	ctx.Log.Info("reverted", zap.Int("snapshot", int(snap)))

	if err := j.Commit(); err != nil {
		ctx.Log.Error("commit failed", zap.Error(err))
		return err
	}

	root, err := j.StorageRoot(address)
	if err != nil {
		ctx.Log.Error("storage root failed", zap.Error(err))
		return err
	}
	ctx.Log.Info("committed", zap.String("root", root.String()))
	return nil
}

// Context carries shared dependencies into each subcommand's Run, passed
// through kong's parser.Run.
type Context struct {
	Log *zap.Logger
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	parser := kong.Parse(&CLI)
	err = parser.Run(&Context{Log: logger})
	parser.FatalIfErrorf(err)
}
