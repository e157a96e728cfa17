// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

type keyspace struct {
	prefix string
	src    Store
}

func newKeyspace(space string, src Store) Keyspace {
	return &keyspace{space, src}
}

func (k *keyspace) compose(key []byte) []byte {
	return append(append(make([]byte, 0, len(k.prefix)+len(key)), k.prefix...), key...)
}

func (k *keyspace) Get(key []byte) ([]byte, error) {
	return k.src.Get(k.compose(key))
}

func (k *keyspace) Has(key []byte) (bool, error) {
	return k.src.Has(k.compose(key))
}

func (k *keyspace) IsNotFound(err error) bool {
	return k.src.IsNotFound(err)
}

func (k *keyspace) Put(key, value []byte) error {
	return k.src.Put(k.compose(key), value)
}

func (k *keyspace) Delete(key []byte) error {
	return k.src.Delete(k.compose(key))
}

func (k *keyspace) NewIterator(r Range) Iterator {
	if len(r.Start) == 0 && len(r.Limit) == 0 {
		pr := util.BytesPrefix([]byte(k.prefix))
		r = Range{Start: pr.Start, Limit: pr.Limit}
	} else {
		r = Range{Start: k.compose(r.Start), Limit: k.compose(r.Limit)}
	}
	iter := k.src.NewIterator(r)
	return &keyspaceIterator{iter, len(k.prefix)}
}

func (k *keyspace) NewBatchPutter(b Batch) Putter {
	return &keyspacePutter{k, b}
}

type keyspacePutter struct {
	ks  *keyspace
	dst Putter
}

func (p *keyspacePutter) Put(key, value []byte) error {
	return p.dst.Put(p.ks.compose(key), value)
}

func (p *keyspacePutter) Delete(key []byte) error {
	return p.dst.Delete(p.ks.compose(key))
}

type keyspaceIterator struct {
	Iterator
	prefixLen int
}

// Key strips the keyspace prefix.
func (it *keyspaceIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
